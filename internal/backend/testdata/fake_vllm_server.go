package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync/atomic"
	"syscall"
	"time"
)

// A stand-in for the vLLM OpenAI server used by tests. Behaviour is tuned via:
//
//	FAKE_READY_DELAY     duration before /health turns 200 (default 0)
//	FAKE_IGNORE_SIGTERM  "1" to ignore SIGTERM so callers must escalate
//	FAKE_EXIT_CODE       exit immediately with this code after printing to stderr
func main() {
	var (
		model    string
		host     string
		port     int
		maxLen   int
		gpuUtil  float64
		dtype    string
		trustRmt bool
	)
	flag.StringVar(&model, "model", "", "model name")
	flag.StringVar(&host, "host", "127.0.0.1", "bind host")
	flag.IntVar(&port, "port", 0, "port")
	flag.IntVar(&maxLen, "max-model-len", 0, "context length")
	flag.Float64Var(&gpuUtil, "gpu-memory-utilization", 0, "utilization")
	flag.StringVar(&dtype, "dtype", "", "dtype")
	flag.BoolVar(&trustRmt, "trust-remote-code", false, "trust remote code")
	flag.Parse()

	fmt.Printf("fake vllm: model=%s port=%d max_model_len=%d util=%v\n", model, port, maxLen, gpuUtil)

	if v := os.Getenv("FAKE_EXIT_CODE"); v != "" {
		code, _ := strconv.Atoi(v)
		fmt.Fprintf(os.Stderr, "fatal: cannot load %s\n", model)
		os.Exit(code)
	}
	var delay time.Duration
	if v := os.Getenv("FAKE_READY_DELAY"); v != "" {
		delay, _ = time.ParseDuration(v)
	}
	readyAt := time.Now().Add(delay)
	var requests atomic.Int64

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if time.Now().Before(readyAt) {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/v1/models", func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"data":   []map[string]any{{"id": model, "object": "model", "max_model_len": maxLen}},
		})
	})

	ln, err := net.Listen("tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		log.Fatalf("listen: %v", err)
	}
	srv := &http.Server{Handler: mux}
	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			log.Fatalf("serve: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	if os.Getenv("FAKE_IGNORE_SIGTERM") == "1" {
		signal.Ignore(syscall.SIGTERM)
		signal.Notify(sigCh, syscall.SIGINT)
	} else {
		signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	}
	<-sigCh
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
}
