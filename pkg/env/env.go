// Copyright 2025 ZapFS Authors
// SPDX-License-Identifier: Apache-2.0

// Package env reports the deployment environment, read once from
// ZAPLAMBDA_ENV.
package env

import (
	"os"
	"strings"
)

const (
	Local      = "local"
	Production = "production"
)

// Env is the deployment environment. When ZAPLAMBDA_ENV is unset it is
// production inside the Lambda runtime and local everywhere else.
var Env = detect(os.Getenv)

func IsLocal() bool {
	return Env == Local
}

func detect(getenv func(string) string) string {
	if e := strings.ToLower(strings.TrimSpace(getenv("ZAPLAMBDA_ENV"))); e != "" {
		return e
	}
	if getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		return Production
	}
	return Local
}
