/*
molbond reads small molecules and turns their bonds into half-cylinders,
one for each end, coloured by the atom at that end.

Usage:

	molbond [options] name [name ...]

Flags:

	-s source
	  Where names come from. "file" (the default) means a path to a pdb
	  or sdf file, possibly gzipped. "bundle" means one of the samples
	  built into the program, like "ethanol" or "ethanol.sdf". "rcsb"
	  means a ligand code, like "ATP", downloaded from the RCSB.
	-f format
	  summary (default) is a table of counts. json, yaml and msgpack
	  write the whole scene. instances writes csv, one line per
	  half-bond with its position, rotation quaternion, height, radius
	  and colour, ready for instanced drawing. png draws a picture, but
	  only of one molecule.
	-o filename
	  Write to filename instead of standard output.
	-c filename
	  Config file. Without this, look at $MOLBOND_CONFIG, then
	  ./molbond.yaml, then ~/.config/molbond/config.yaml.
	-u	Drop bonds that are listed twice. pdb files often do this.
	-r R	Radius of bond cylinders.
	-l where
	  Log to stdout, stderr or a file. The default is no log.
	-v	Log at debug level.

Names are read at the same time. If some cannot be read, the rest are
still written and the exit status is 3.
*/
package main
