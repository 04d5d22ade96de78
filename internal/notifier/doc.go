// Package notifier delivers the court alert to the requester.
//
// Email is the primary channel: SendGrid when an API key is configured,
// plain SMTP otherwise. A Telegram channel and a dry-run printer exist as
// optional additions. All delivery is best-effort; a notification failure is
// logged but never treated as a failure of the booking it reports.
package notifier
