// Package version carries build metadata, overridden at link time:
//
//	go build -ldflags "-X github.com/zaqqye/evaluasi_backend/internal/version.Version=1.2.0"
package version

import (
	"fmt"
	"runtime"
)

var (
	Version = "dev"
	Commit  = "none"
)

func String() string {
	return fmt.Sprintf("evaluasi_backend %s (%s, %s)", Version, Commit, runtime.Version())
}
