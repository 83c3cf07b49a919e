// Package snippet defines the code sample generator contract and ships a
// built-in generator.
//
// A [Generator] receives a document, one of its operations, parameter and body
// values, credentials and a language target, and returns source code. An empty
// result with a nil error declines the combination.
//
// [Registry] is the built-in implementation. It shapes an HTTP [Request] from
// the dereferenced operation (server URL, parameters, credentials, body) and
// renders it through embedded templates for these targets:
//
//	csharp  go  java  javascript  kotlin  node  php  python  ruby  shell  swift
//
// Go output is run through goimports processing so samples compile as shown.
package snippet
