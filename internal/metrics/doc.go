// Package metrics provides run metrics for docops commands.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics cost nothing unless enabled:
//
//	deployer := deploy.New(runner).WithRecorder(recorder)
//
// docops is a short-lived CLI, so there is no scrape endpoint. When
// --metrics-file is set the PrometheusRecorder's registry is written once at
// exit in the node_exporter textfile format (see WriteTextfile).
package metrics
