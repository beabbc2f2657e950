// Package services contains stateless domain services that operate across
// aggregates: escalation evaluation, workflow template selection and bulk
// import row validation.
package services
