// Package metadata reads and writes IronJacamar deployment descriptors.
//
// # Overview
//
// Two document roots are supported:
//
//	<ironjacamar>           one resource adapter activation (ironjacamar.xml)
//	<resource-adapters>     a list of <resource-adapter> activations
//
// Each element is parsed by its own function into an immutable value object
// (Pool, XaPool, Security, Recovery, Timeout, Validation,
// ConnectionDefinition, AdminObject, Activation). Objects are built bottom-up
// and validated by their New* constructor, so an invalid object never exists.
//
// # Expressions
//
// Attribute and element text may contain ${name} or ${name:default}
// placeholders. They are resolved while parsing against a Lookup (the process
// environment unless WithLookup is given). The raw text is recorded on the
// owning object, and the Writer emits it again instead of the resolved value:
//
//	<connection-definition jndi-name="${eis.jndi:java:/eis/Default}">
//
// round-trips unchanged. Unbalanced placeholder syntax is kept as a literal
// and reported through the parser's logger.
//
// # Usage
//
//	parser := metadata.NewParser(metadata.WithLogger(logger))
//	a, err := parser.ParseIronJacamar(f, "META-INF/ironjacamar.xml")
//	if err != nil {
//	    var pe *metadata.ParseError
//	    if errors.As(err, &pe) {
//	        fmt.Println(pe.Line, pe.Message)
//	    }
//	}
//	out, err := metadata.MarshalIronJacamar(a)
package metadata
