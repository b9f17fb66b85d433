package events

import (
	"context"
	"sync"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

var (
	emitMu sync.RWMutex
	emit   = func(name string, payload any) {}
)

// Emit forwards an event to the active emitter. It is a no-op until an emitter is set.
func Emit(name string, payload any) {
	emitMu.RLock()
	f := emit
	emitMu.RUnlock()
	f(name, payload)
}

// EnableRuntimeEmitter sends events to the Wails frontend bound to appCtx.
// Timers fire outside any request, so the application context is captured here
// rather than taken per call.
func EnableRuntimeEmitter(appCtx context.Context) {
	SetCustomEmitter(func(name string, payload any) {
		runtime.EventsEmit(appCtx, name, payload)
		logRuntimeEvent(appCtx, name, payload)
	})
}

func SetCustomEmitter(f func(name string, payload any)) {
	emitMu.Lock()
	defer emitMu.Unlock()
	if f == nil {
		emit = func(string, any) {}
		return
	}
	emit = f
}
