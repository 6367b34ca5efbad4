// Package shape classifies runtime types and describes their structure.
//
// Classify decides, for any reflect.Type, whether it is scalar, container,
// or composite; Describe returns a cached, immutable Descriptor listing a
// composite's members or a container's element types. Both are consumed by
// the mapping engine to drive traversal decisions, and carry no traversal
// state of their own.
//
// Go has no enumeration types, so enumerations are modeled as named
// integer types whose members are registered explicitly with RegisterEnum.
package shape
