// Package textproc rewrites and splits input lines before they reach the
// typist: ordered find/replace substitution and dump marker planning. It does
// no I/O and never sleeps.
package textproc
