//go:build fftw

package main

// Linking this registers the "fftw" backend.
import _ "github.com/abworrall/ereg/pkg/fftw"
