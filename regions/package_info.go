// Package regions contains the wire model of the regions search endpoint: the query
// parameters a client may send, and the two response shapes the service may return.
//
// A response body is decoded once by Parse into a Response, which holds either a
// ResultPage or an ErrorEnvelope and never both. Anything else is a MalformedResponseError.
package regions
