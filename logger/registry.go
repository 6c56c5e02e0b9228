package logger

import "sync"

// named caches component loggers derived from the global logger. It is
// emptied whenever the global logger is replaced so components pick up the
// new configuration on their next Get.
var named sync.Map

// Get returns the logger for a component, tagged with its name.
func Get(name string) *Logger {
	if l, ok := named.Load(name); ok {
		return l.(*Logger)
	}
	l, _ := named.LoadOrStore(name, GetGlobalLogger().WithComponent(name))
	return l.(*Logger)
}

// Override pins the logger handed to a component until the global logger
// changes. Tests use it to capture one component's output.
func Override(name string, l *Logger) {
	named.Store(name, l)
}

func forgetNamed() {
	named.Clear()
}
