// Package wastencode converts wast2json command records into command lines
// for a WebAssembly spec-test runner.
//
// The input is a newline-delimited stream of JSON records, one test-suite
// step each: module loads, invocations and assertions. Each record maps to
// zero or one output line. The conversion never executes or validates
// WebAssembly; it only rewrites the records as runner arguments.
//
// # Architecture Overview
//
//	wastencode/          Convert and Transcoder: the record pipeline
//	├── stream/          Line reader with multi-line JSON reassembly
//	├── command/         Command, Action and Value records
//	├── encoder/         Module-path state and command dispatch
//	├── errors/          Structured error types
//	├── internal/config/ Environment configuration
//	└── cmd/wast-encode/ Command-line entrypoint
//
// # Quick Start
//
//	stats, err := wastencode.Convert(ctx, "out", os.Stdin, os.Stdout, os.Stderr)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(stats.Lines, "lines")
//
// A record such as
//
//	{"type":"action","action":{"type":"invoke","field":"add","args":[{"value":"1"},{"value":"2"}]}}
//
// following {"type":"module","filename":"a.wasm"} becomes
//
//	out/a.wasm --invoke add 1 2
//
// Records with an unknown "type" are echoed to the diagnostic writer and
// otherwise skipped.
package wastencode
