//go:build !unix

package jsonl

import "os"

// Without flock only the in-process lock applies.
func flock(*os.File, bool) error { return nil }

func funlock(*os.File) error { return nil }
