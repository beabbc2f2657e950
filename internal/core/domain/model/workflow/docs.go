// Package workflow holds the workflow template aggregate: ordered steps
// with timing expectations, escalation rules, applicability filters and
// the progress approximation that places an order inside its template.
package workflow
