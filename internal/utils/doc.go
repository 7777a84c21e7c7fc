// Package utils holds small helpers shared by the sync client: the resty
// HTTP client, request signing, bearer token inspection and record id
// generation.
package utils
