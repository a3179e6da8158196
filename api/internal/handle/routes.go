package handle

import "github.com/go-chi/chi/v5"

// LegacyTriggerPath is the URL already embedded in Notion buttons and automations.
const LegacyTriggerPath = "/trigger-python"

// Mount registers the service routes on r.
func (h *Handle) Mount(r chi.Router) {
	r.Get("/healthz", h.Healthz)
	r.HandleFunc(LegacyTriggerPath, h.Trigger)
	r.HandleFunc("/trigger", h.Trigger)
}
