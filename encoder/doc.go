// Package encoder turns wast2json command records into command lines for the
// spec-test runner.
//
// An Encoder folds over the command stream. Its only state is the path of
// the module most recently loaded by a "module" command; every action-bearing
// command is encoded against that path. Before any module has been seen the
// path is the sentinel "<dir>/__NULL__.wasm".
//
// Output formats:
//
//	action            <module> --invoke <field> [<args>...]
//	                  <module> --get <field>
//	assert_return     <action> --assert-return <expected>...
//	assert_trap       <action> --assert-trap
//	assert_invalid    <dir>/<filename> --assert-invalid
//	assert_malformed  <dir>/<filename> --assert-malformed
package encoder
