package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RegistrationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notesapi_registrations_total",
		Help: "Successful user registrations.",
	})

	LoginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notesapi_logins_total",
		Help: "Login attempts by outcome.",
	}, []string{"outcome"})

	TokenValidationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notesapi_token_validations_total",
		Help: "Bearer token validation attempts by result.",
	}, []string{"result"})

	NotesCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notesapi_notes_created_total",
		Help: "Notes created.",
	})
)
