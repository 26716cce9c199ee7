// Package fftw is an efft backend built on the FFTW3 C library. It is
// only compiled with `-tags fftw`; import it for its side effect of
// registering the "fftw" backend.
package fftw
