// Package introspect resolves the signatures of a module's exported functions.
//
// A Resolver is built once per module from the decoded Type, Import, Function
// and Export sections. Each query walks the export list for the first function
// export with the requested name and maps its raw function index through the
// function section to a type:
//
//	r, err := introspect.Inspect(data)
//	res, err := r.Resolve("add")
//	fmt.Println(introspect.FormatResult(res))
//	// add: funcidx=0 typeidx=0 (i32, i32) -> (i32)
//
// Function indices below the number of imported functions belong to imports.
// Exports of imported functions resolve to ImportedFunctionExport, since the
// import section is only decoded far enough to count them.
package introspect
