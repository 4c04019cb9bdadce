package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/google/uuid"

	"athletes/internal/config"
	"athletes/internal/metrics"
	"athletes/internal/metrics/datadog"
	"athletes/internal/metrics/prompush"
	"athletes/internal/pipeline"

	// register all backends with the storage factory.
	_ "athletes/internal/storage/all"
)

// main loads the pipeline file, applies environment and flag overrides,
// installs a metrics backend and runs one normalization batch.
func main() {
	var (
		cfgPath        string
		inputFlg       string
		outputFlg      string
		metricsFlg     string
		pushGatewayFlg string
		datadogFlg     string
		validate       bool
	)

	flag.StringVar(&cfgPath, "config", "configs/pipelines/bios.json", "pipeline config path (.json, .yaml)")
	flag.StringVar(&inputFlg, "input", "", "input file (overrides source.file.path and ATHLETES_INPUT)")
	flag.StringVar(&outputFlg, "output", "", "output file (overrides output.path and ATHLETES_OUTPUT)")
	flag.StringVar(&metricsFlg, "metrics-backend", "", "metrics backend: pushgateway, datadog, none")
	flag.StringVar(&pushGatewayFlg, "pushgateway-url", "", "Pushgateway base URL")
	flag.StringVar(&datadogFlg, "datadog-addr", "", "DogStatsD address, e.g. 127.0.0.1:8125")
	flag.BoolVar(&validate, "validate", false, "validate the configuration and exit")
	verbose := flag.Bool("v", false, "enable verbose logs")
	flag.Parse()

	env, err := config.LoadEnv(".env")
	if err != nil {
		fatalf("environment: %v", err)
	}

	p, err := config.Load(cfgPath)
	if err != nil {
		fatalf("load config: %v", err)
	}
	env.Apply(&p)
	if inputFlg != "" {
		p.Source.File.Path = inputFlg
	}
	if outputFlg != "" {
		p.Output.Path = outputFlg
	}

	issues := config.ValidatePipeline(p)
	for _, iss := range issues {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
	}
	if config.HasErrors(issues) {
		log.Printf("Configuration is invalid: %v", cfgPath)
		os.Exit(1)
	}
	if validate {
		log.Printf("Configuration is valid: %v", cfgPath)
		os.Exit(0)
	}

	runID := uuid.NewString()
	setupMetrics(
		firstNonEmpty(metricsFlg, env.MetricsBackend, "none"),
		p.Job,
		runID,
		firstNonEmpty(pushGatewayFlg, env.PushgatewayURL, "http://localhost:9091"),
		firstNonEmpty(datadogFlg, env.DatadogAddr, "127.0.0.1:8125"),
		*verbose,
	)

	if *verbose {
		log.Printf("pipeline: run=%s source=%s parser=%s output=%s storage=%s",
			runID, p.Source.File.Path, p.Parser.Kind, p.Output.Path, p.Storage.Kind)
	}

	rep, err := run(p, pipeline.Options{RunID: runID, Verbose: *verbose})
	flushMetrics()
	if err != nil {
		fatalf("run %s: %v", runID, err)
	}
	log.Print(rep.Summary())
}

// run executes the pipeline under a context canceled by SIGINT. The signal
// handler is released before run returns, so callers may exit directly.
func run(p config.Pipeline, opt pipeline.Options) (pipeline.Report, error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return pipeline.Run(ctx, p, opt)
}

// setupMetrics installs the selected backend. Failures fall back to the nop
// backend; metrics never abort a run.
func setupMetrics(name, job, runID, gatewayURL, datadogAddr string, verbose bool) {
	switch name {
	case "pushgateway":
		b, err := prompush.NewBackend(job, runID, gatewayURL)
		if err != nil {
			log.Printf("metrics: failed to init prom push backend: %v; using nop", err)
			return
		}
		log.Printf("metrics: backend=%s url=%s job_name=%s", name, gatewayURL, job)
		metrics.SetBackend(b)

	case "datadog":
		b, err := datadog.NewBackend(datadog.Config{
			Addr:      datadogAddr,
			Namespace: "athletes.",
			Tags:      []string{"job:" + job, "run_id:" + runID},
		})
		if err != nil {
			log.Printf("metrics: failed to init datadog backend: %v; using nop", err)
			return
		}
		log.Printf("metrics: backend=%s addr=%s", name, datadogAddr)
		metrics.SetBackend(b)

	case "", "none":
		if verbose {
			log.Printf("metrics: disabled (backend=%q)", name)
		}

	default:
		log.Printf("metrics: unknown backend %q; metrics disabled", name)
	}
}

func flushMetrics() {
	if err := metrics.Flush(); err != nil {
		log.Printf("metrics: flush error: %v", err)
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
