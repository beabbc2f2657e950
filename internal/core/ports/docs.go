// Package ports declares the outbound contracts of the core: persistence,
// event publishing and the external sync gateway. Adapters implement them;
// use cases consume them.
package ports
