// Package clientip resolves the address of the client behind reverse
// proxies and carries it in the request context.
//
// Only put headers in front of the fallback that your proxy overwrites;
// anything else is client controlled.
package clientip
