package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/schedulix/timetable/internal/config"
	"github.com/schedulix/timetable/internal/export"
	"github.com/schedulix/timetable/internal/model"
)

func main() {
	// Define arguments
	configPathPtr := flag.String("config", "", "Path to the JSON problem instance")
	outPathPtr := flag.String("out", "timetable.json", "Path to the JSON file where the schedule will be written")
	csvPathPtr := flag.String("csv", "", "Optional path to a CSV rendering of the schedule")
	timeoutPtr := flag.Float64("timeout", 0, "Solver budget in seconds; overrides solver_timeout_seconds from the instance")
	flag.Parse()

	if *configPathPtr == "" {
		log.Fatal("a problem instance file must be specified with -config")
	}

	fmt.Println("Starting timetable generation...")

	cfg, err := config.Load(*configPathPtr)
	if err != nil {
		log.Fatalf("cannot load problem instance: %v", err)
	}
	if *timeoutPtr > 0 {
		cfg.SolverTimeout = time.Duration(*timeoutPtr * float64(time.Second))
	}
	fmt.Printf("  - Instance loaded: %d sections, %d teachers, %d rooms\n",
		len(cfg.Sections), len(cfg.AllTeachers), len(cfg.AllRooms))

	timetabler := model.NewTimetabler()
	fmt.Printf("  - Solver is running (max %v)...\n", cfg.SolverTimeout)
	result, err := timetabler.Build(cfg)
	if err != nil {
		log.Fatalf("an error occurred during timetable construction: %v", err)
	}

	fmt.Printf("  - Model: %d variables, %d constraints\n", result.Variables, result.Constraints)
	for _, skipped := range result.Skipped {
		fmt.Printf("  - Skipped lab offering %v: no teacher could be resolved\n", skipped)
	}

	if !result.Status.HasSolution() {
		fmt.Println("No feasible solution found.")
		fmt.Printf("Solver status: %v\n", result.Status)
		fmt.Println("Try relaxing constraints or increasing the solver budget.")
		return
	}

	if !timetabler.Verify(result.Schedule, cfg, result.Skipped) {
		log.Fatal("built schedule failed verification")
	}

	if err := export.WriteScheduleJSON(result.Schedule, *outPathPtr); err != nil {
		log.Fatalf("cannot export schedule: %v", err)
	}
	fmt.Printf("Schedule exported to %v (status %v, objective %d)\n", *outPathPtr, result.Status, result.Cost)

	if *csvPathPtr != "" {
		if err := export.WriteScheduleCSV(result.Schedule, *csvPathPtr); err != nil {
			log.Fatalf("cannot export schedule csv: %v", err)
		}
		fmt.Printf("CSV exported to %v\n", *csvPathPtr)
	}

	fmt.Println("Process complete.")
}
