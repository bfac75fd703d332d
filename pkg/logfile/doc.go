// Package logfile reads the text logs written by package sdlog.
//
// A log is plain text with one record per line. Each time a file is opened the
// logger writes a "start logging..." line, which begins a session. Buffered
// writes are cut into segments by "buffered" marker lines. Everything else is
// data. Records can be streamed with a Reader, summarized with Collect, and
// exported as JSON Lines, CSV or CBOR.
package logfile
