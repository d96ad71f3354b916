// Package requestid tags every HTTP request with an identifier.
//
// Middleware takes the id from the X-Request-ID header when it is at most 128
// characters of letters, digits, '-' and '_'; otherwise it generates a UUIDv7.
// The id is echoed in the response header and stored in the request context,
// where FromContext reads it. LoggerExtractor plugs into
// logger.WithContextExtractors so every record logged with the request
// context carries request_id.
package requestid
