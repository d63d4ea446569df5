// This file is part of fsimhost.
//
// fsimhost is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// fsimhost is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with fsimhost.  If not, see <https://www.gnu.org/licenses/>.

// Package curated is a helper package for the plain Go language error type.
//
// Curated errors are created with the Errorf() function. It takes a pattern
// and placeholder values in the same way as the Errorf() function in the fmt
// package, but the pattern is retained and can be used to identify the error
// later on:
//
//	const StepWhileBusy = "softfpga: step requested while stepping (%d cycles remaining)"
//
//	err := curated.Errorf(StepWhileBusy, 10)
//
//	if curated.Is(err, StepWhileBusy) {
//		fmt.Println("true")
//	}
//
// The Has() function is similar but checks whether the pattern occurs
// anywhere in the chain of errors. Curated errors implement Unwrap() so the
// first error value passed to Errorf() is also visible to errors.Is() and
// errors.As() from the standard library.
//
// The IsAny() function answers whether the error was created by Errorf() at
// all. We can think of the difference as being 'expected' and 'unexpected'
// errors, depending on how we choose to handle them.
//
// The Error() function normalises the error message by removing duplicate
// adjacent message parts. For example, two wrapped errors both beginning with
// "orchestrator: " will only print the prefix once.
package curated
