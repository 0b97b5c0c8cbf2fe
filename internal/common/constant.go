package common

// SessionTokenHeaderName is the metadata key under which the transport
// collaborator carries the session token on inbound requests.
const SessionTokenHeaderName = "x-token"

// ListPageSize is the fixed page size for entry listings.
const ListPageSize = 20
