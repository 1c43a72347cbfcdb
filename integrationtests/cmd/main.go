package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/modulesio/prsnt/integrationtests/scenario"
)

const (
	defaultRegistryURL = "http://localhost:8000"
	defaultTargetHost  = "127.0.0.1"
)

func main() {
	list := flag.Bool("list", false, "list available scenarios and exit")
	scenarioName := flag.String("scenario", "", "scenario to run (or pass as positional arg)")
	registryURL := flag.String("registry", "", "registry base URL (default: http://localhost:8000 or REGISTRY_URL env)")
	targetHost := flag.String("target-host", "", "IPv4 address probe targets listen on (default: 127.0.0.1 or TARGET_HOST env)")
	flag.Parse()

	if *registryURL == "" {
		*registryURL = os.Getenv("REGISTRY_URL")
	}
	if *registryURL == "" {
		*registryURL = defaultRegistryURL
	}
	if *targetHost == "" {
		*targetHost = os.Getenv("TARGET_HOST")
	}
	if *targetHost == "" {
		*targetHost = defaultTargetHost
	}

	if *list {
		for _, name := range scenario.Names() {
			fmt.Println(name)
		}
		os.Exit(0)
	}

	name := *scenarioName
	if name == "" {
		args := flag.Args()
		if len(args) > 0 {
			name = args[0]
		}
	}
	if name == "" {
		fmt.Fprintln(os.Stderr, "usage: integrationtests [--list] [--scenario=NAME] [--registry=URL] [--target-host=IP] [scenario_name]")
		fmt.Fprintln(os.Stderr, "  use --list to list scenarios")
		os.Exit(2)
	}

	cfg := &scenario.Config{
		RegistryURL: strings.TrimSuffix(*registryURL, "/"),
		TargetHost:  *targetHost,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	err := scenario.Run(name, ctx, cfg)

	fmt.Println("\n=== Scenario Result ===")
	fmt.Printf("Scenario: %s\n", name)

	if err != nil {
		fmt.Printf("Status: FAILED\n")
		fmt.Printf("Error: %v\n", err)
		var unknown *scenario.UnknownScenarioError
		if errors.As(err, &unknown) {
			fmt.Fprintf(os.Stderr, "\navailable scenarios: %s\n", strings.Join(scenario.Names(), ", "))
			fmt.Println("=====================")
			os.Exit(2)
		}
		fmt.Println("=====================")
		os.Exit(1)
	}

	fmt.Printf("Status: PASSED\n")
	fmt.Println("=====================")
	os.Exit(0)
}
