// Package overlay expresses assembled code samples as an OpenAPI Overlay
// (v1.0.0) document instead of a rewritten source document.
//
// Each operation with samples becomes one action whose target selects the
// operation and whose update sets the x-codeSamples extension:
//
//	overlay: 1.0.0
//	info:
//	  title: Code samples for Petstore
//	  version: 1.0.0
//	actions:
//	  - target: $.paths['/pets'].get
//	    update:
//	      x-codeSamples:
//	        - lang: shell
//	          label: Shell
//	          source: curl --request GET ...
//
// Applying that overlay to the source document with any overlay tool yields
// the same result as splicing the samples directly. [Apply] implements the
// subset of overlay semantics needed for such documents.
package overlay
