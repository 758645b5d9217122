// Package notifier composes the bulletin e-mail and hands it to a Mailer.
//
// Compose renders the subject, a plain-text body and an HTML alternative from
// a report.Report. Notifier sends it to an explicit recipient and reports the
// outcome as a report.DeliveryStatus instead of returning an error. Mailers
// exist for SMTP delivery and for dry runs that only print the message.
package notifier
