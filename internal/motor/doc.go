// Package motor implements the resilient interaction engine: locating,
// stabilizing and clicking UI elements on a continuously shifting page
// using geometric search, convergence polling and tiered retry.
//
// The engine decides how to click, never what: callers supply policy
// (which role, which page) and receive bounded, structured outcomes.
// It operates purely by sampling the page through the Page interface;
// there is no DOM-mutation subscription.
package motor
