// Package utils holds small path helpers shared by the section builder.
package utils
