// Package label holds the value objects of a printable product label:
// the resolved label content and the fixed physical page it is printed on.
package label
