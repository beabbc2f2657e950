// Package order holds the transport order aggregate: the order root, its
// milestone entities, the status state machines and the derivation rules
// that keep order status consistent with milestone states.
package order
