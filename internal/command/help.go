package command

const help = `Available commands:
- SET(row,col)=value          e.g. SET(1,2)=A
- PUT row,col value           e.g. PUT 1,2 A
- FILL ROW n WITH value       e.g. FILL ROW 3 WITH B
- FILL COLUMN n WITH value    e.g. FILL COLUMN 2 WITH C
- REPLACE ALL x CELLS WITH y  e.g. REPLACE ALL A CELLS WITH B
- CLEAR                       clear the entire grid

Coordinates are 1-based. Values: A-Z, 0-9, or _ for empty.`

// Help returns the command grammar summary shown to players.
func Help() string {
	return help
}
