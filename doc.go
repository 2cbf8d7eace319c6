// Package wasmintrospect reports the signatures of functions exported by
// WebAssembly binary modules.
//
// # Architecture Overview
//
//	wasmintrospect/
//	├── wasm/            Header check, section scan and Type/Import/Function/Export decoders
//	├── introspect/      Export -> signature resolution and the line-oriented report
//	├── verify/          Optional cross-check against wazero's decoder
//	├── errors/          Structured error types (phase + kind)
//	└── cmd/wasm-sig/    Command-line front end
//
// # Quick Start
//
//	data, err := introspect.Load("module.wasm")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	r, err := introspect.Inspect(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := r.Resolve("add")
//	fmt.Println(introspect.FormatResult(res))
//
// Or from the shell:
//
//	wasm-sig module.wasm add sub
//	wasm-sig --verify module.wasm
package wasmintrospect
