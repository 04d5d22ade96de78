// Package booker performs the provider-specific HTTP submission sequence that
// claims a single court slot on the ZHS booking site.
package booker
