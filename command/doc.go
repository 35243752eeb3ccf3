// Package command defines the wast2json command records consumed by
// wast-encode.
//
// A record is one JSON object with a "type" tag. The tags understood by the
// encoder are listed as Kind constants; every other tag decodes fine and is
// reported as unknown by the encoder. Only the attributes the encoder needs
// are modelled; the rest of the record is kept verbatim in Command.Raw.
package command
