// Copyright 2025 ZapFS Authors
// SPDX-License-Identifier: Apache-2.0

package transform

import (
	"fmt"
	"sort"
	"strings"
)

// Name of the default transform.
const NameIdentity = "identity"

var registry = map[string]Transformer{
	NameIdentity: Identity,
	"upper":      Func(upper),
	"lower":      Func(lower),
}

func init() {
	for _, c := range []Codec{LZ4, ZSTD, S2} {
		registry[c.String()] = Compressor(c)
		registry["un"+c.String()] = Decompressor(c)
	}
}

// Lookup returns the named transform. The empty name is the identity.
func Lookup(name string) (Transformer, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Identity, nil
	}
	t, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown transform %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return t, nil
}

// Parse resolves a comma separated list of transform names into a single
// Transformer applied left to right, e.g. "unzstd,upper".
func Parse(spec string) (Transformer, error) {
	parts := strings.Split(spec, ",")
	ts := make([]Transformer, 0, len(parts))
	for _, p := range parts {
		t, err := Lookup(p)
		if err != nil {
			return nil, err
		}
		ts = append(ts, t)
	}
	return Chain(ts...), nil
}

// Names lists the registered transforms in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
