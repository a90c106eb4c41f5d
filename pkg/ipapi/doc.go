// Package ipapi resolves listener IP addresses to locations using the
// ip-api.com JSON endpoint.
//
// Requests can be paced with a token bucket so that a burst of lookups stays
// under the provider's free tier limits.
package ipapi
