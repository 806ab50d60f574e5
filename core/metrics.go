package core

import "github.com/prometheus/client_golang/prometheus"

const prometheusNamespace = "walletdeploy"

var ErrorsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: prometheusNamespace,
	Name:      "errors_total",
	Help:      "Deployment pipeline errors by stage",
}, []string{"contract", "stage"})

var DeploymentsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: prometheusNamespace,
	Name:      "deployments_total",
	Help:      "Creation transactions by final status",
}, []string{"contract", "status"})

var LinkedBytesGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: prometheusNamespace,
	Name:      "linked_bytecode_bytes",
	Help:      "Size of the last linked bytecode image",
}, []string{"contract"})
