// Package pipeline runs one bulletin delivery: compute today's date, fetch
// the page, extract the report and e-mail it.
//
// A run always ends in exactly one report.DeliveryStatus. A fetch failure
// ends it with Erro before anything is sent, a missing report ends it with
// Ignorado, and otherwise exactly one e-mail is sent.
package pipeline
