// Package model holds the types shared by the pipeline package and its options: step descriptors,
// typed step handles and the hook interface implemented by pipeline options such as measure and
// drawer.
package model
