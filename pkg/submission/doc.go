// Package submission transmits a form record to the remote collection
// endpoint and classifies the outcome into network, unauthorized, server and
// request failures.
package submission
