// Copyright 2025 ZapFS Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/LeeDigitalWorks/zaplambda/cmd"
	"github.com/LeeDigitalWorks/zaplambda/pkg/env"

	"github.com/getsentry/sentry-go"
)

func main() {
	// The DSN is read from SENTRY_DSN; without it sentry stays disabled.
	err := sentry.Init(sentry.ClientOptions{
		SampleRate:       1.0,
		EnableTracing:    true,
		TracesSampleRate: 0.1,
		Release:          "zaplambda@" + cmd.Version,
		Environment:      env.Env,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "sentry.Init: %v\n", err)
	}
	// Flush buffered events before the program terminates.
	defer sentry.Flush(2 * time.Second)

	cmd.Execute()
}
