// Package interfaces
package interfaces

import (
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/global"
)

type CleanerInterface interface {
	Init()
	Add(callable global.Callable)
	SetExitCode(code int)
	Clean()
}
