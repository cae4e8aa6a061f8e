package notify

import "log"

// Dispatcher fans session events out to every subscribed plugin.
type Dispatcher struct {
	manager  *Manager
	executor *Executor
}

// NewDispatcher creates a dispatcher over the given manager and executor.
func NewDispatcher(manager *Manager, executor *Executor) *Dispatcher {
	return &Dispatcher{
		manager:  manager,
		executor: executor,
	}
}

// Dispatch sends the event to every plugin subscribed to it. Plugin
// failures are logged and never propagate to the caller: a broken
// notifier must not disturb the counting pipeline.
func (d *Dispatcher) Dispatch(req *Request) {
	for _, plugin := range d.manager.List() {
		if !plugin.Subscribed(req.Event) {
			continue
		}

		resp, err := d.executor.Execute(plugin, req)
		if err != nil {
			log.Printf("Notifier %s failed: %v", plugin.Manifest.Name, err)
			continue
		}
		if !resp.Success {
			log.Printf("Notifier %s rejected event %s: %s", plugin.Manifest.Name, req.Event, resp.Error)
		}
	}
}
