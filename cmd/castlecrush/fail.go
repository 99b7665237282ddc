// Copyright (C) 2025, VigilantDoomer
//
// This file is part of CastleCrush program.
//
// CastleCrush is free software: you can redistribute it
// and/or modify it under the terms of GNU General Public License
// as published by the Free Software Foundation, either version 2 of
// the License, or (at your option) any later version.
//
// CastleCrush is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with CastleCrush.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"os"

	bettererrors "github.com/xtuc/better-errors"
	bettererrorstree "github.com/xtuc/better-errors/printer/tree"

	"github.com/vigilantdoomer/castlecrush"
)

// failWith prints the error (the whole chain, if it is one) to stderr and
// exits with status 1
func failWith(err error) {
	castlecrush.Log.Error("\n=== an error occurred\n")
	if bettererrors.IsBetterError(err) {
		castlecrush.Log.Error("%s", bettererrorstree.PrintChain(err.(*bettererrors.Chain)))
	} else {
		castlecrush.Log.Error("%s\n", err.Error())
	}
	castlecrush.Log.Sync()
	os.Exit(1)
}
