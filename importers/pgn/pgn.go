/*
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

// Package pgn parses the 5D PGN replay format: bracketed headers and FEN
// rows establishing the starting boards, followed by whitespace-
// separated move tokens that are batched per half-turn and replayed
// through moveset.GenerateSuccessor. Grounded on
// original_source/lib/parse.rs's parse_pgn/parse_fen/parse_moves regex
// grammar; the source's own parse_moves stops at printing each parsed
// move without ever advancing its partial_game, so the turn-batching and
// replay loop here is this package's own contribution toward spec.md
// §6's stated "for replays" purpose.
package pgn

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/avli/ply5d/board"
	"github.com/avli/ply5d/coords"
	"github.com/avli/ply5d/game"
	"github.com/avli/ply5d/movegen"
	"github.com/avli/ply5d/moveset"
)

// ErrorKind classifies a parse failure.
type ErrorKind int

const (
	ErrHeader ErrorKind = iota
	ErrFENDimension
	ErrFENToken
	ErrPiece
	ErrCoordinate
	ErrSyntax
	ErrNoBoard
	ErrAmbiguous
)

// ParseError is the typed error this package returns, grounded on the
// source's PGNParseError enum.
type ParseError struct {
	Kind ErrorKind
	Msg  string
}

func (e *ParseError) Error() string { return e.Msg }

func errf(kind ErrorKind, format string, args ...interface{}) error {
	return &ParseError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

var (
	reHeaderLine   = regexp.MustCompile(`^(\w+)\s+"([^"]+)"$`)
	reWhitespace   = regexp.MustCompile(`[ \t\n]+`)
	reTurn         = regexp.MustCompile(`^(\d+)\.$`)
	rePresentAnno  = regexp.MustCompile(`^\(~T(\d+)\)$`)
	reTimelineAnno = regexp.MustCompile(`^\(>L([+-]?\d+)\)$`)
	reSuperphysical = regexp.MustCompile(`^\(\s*L?\s*([+-]?\d+)\s*T\s*(\d+)\s*\)`)
	rePiece        = regexp.MustCompile(`^(?:BR|CK|RQ|PR|[YPKNRQDUBSWC])`)
	reJump         = regexp.MustCompile(`^([a-w])(\d+)(>>?)(x)?`)
	reCoords       = regexp.MustCompile(`^([a-w])(\d+)`)
	rePromotion    = regexp.MustCompile(`^=([RBUDQSNC])?`)
	reNonjump      = regexp.MustCompile(`^([a-w])?(\d+)?x?([a-w])(\d+)`)
	rePawnCapture  = regexp.MustCompile(`^([a-w])x([a-w])(\d+)`)
)

// fenEntry is one bracketed `[board:L:turn:color]` header line, already
// split on ':'.
type fenEntry struct {
	board, l, turn, color string
}

func stripBraceComments(raw string) string {
	var sb strings.Builder
	inComment := false
	for _, c := range raw {
		switch c {
		case '{':
			inComment = true
		case '}':
			inComment = false
			continue
		}
		if !inComment {
			sb.WriteRune(c)
		}
	}
	return sb.String()
}

func parseHeaders(raw string) (map[string]string, []fenEntry, error) {
	headers := make(map[string]string)
	var fens []fenEntry
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "[") || !strings.HasSuffix(line, "]") {
			continue
		}
		inner := line[1 : len(line)-1]
		if m := reHeaderLine.FindStringSubmatch(inner); m != nil {
			headers[strings.ToLower(m[1])] = m[2]
			continue
		}
		parts := strings.Split(inner, ":")
		if len(parts) != 4 {
			return nil, nil, errf(ErrHeader, "pgn: invalid header line %q", line)
		}
		fens = append(fens, fenEntry{board: parts[0], l: parts[1], turn: parts[2], color: parts[3]})
	}
	return headers, fens, nil
}

func dimensions(headers map[string]string) (int, int) {
	raw, ok := headers["size"]
	if !ok {
		return 8, 8
	}
	parts := strings.Split(raw, "x")
	if len(parts) != 2 {
		return 8, 8
	}
	w, errW := strconv.Atoi(parts[0])
	h, errH := strconv.Atoi(parts[1])
	if errW != nil || errH != nil {
		return 8, 8
	}
	return w, h
}

func deStrLayer(raw string, evenTimelines bool) (coords.L, error) {
	if raw == "-0" {
		return -1, nil
	}
	if raw == "+0" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errf(ErrCoordinate, "pgn: invalid L coordinate %q", raw)
	}
	if parsed < 0 && evenTimelines {
		return coords.L(parsed - 1), nil
	}
	return coords.L(parsed), nil
}

func deTime(raw string, activePlayer bool) (coords.Time, error) {
	t, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errf(ErrCoordinate, "pgn: invalid T coordinate %q", raw)
	}
	result := (t-1)*2 - boolToInt(!activePlayer)
	return coords.Time(result), nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func deX(c byte) (coords.Physical, error) {
	if c >= 'a' && c <= 'w' {
		return coords.Physical(c - 'a'), nil
	}
	return 0, errf(ErrCoordinate, "pgn: invalid X coordinate %q", string(c))
}

func deY(raw string) (coords.Physical, error) {
	y, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errf(ErrCoordinate, "pgn: invalid Y coordinate %q", raw)
	}
	return coords.Physical(y - 1), nil
}

func dePgnPiece(raw string) (coords.PieceKind, error) {
	switch raw {
	case "BR", "W":
		return coords.Brawn, nil
	case "CK", "C":
		return coords.CommonKing, nil
	case "RQ", "Y":
		return coords.RoyalQueen, nil
	case "PR", "S":
		return coords.Princess, nil
	case "P":
		return coords.Pawn, nil
	case "R":
		return coords.Rook, nil
	case "B":
		return coords.Bishop, nil
	case "U":
		return coords.Unicorn, nil
	case "D":
		return coords.Dragon, nil
	case "Q":
		return coords.Queen, nil
	case "K":
		return coords.King, nil
	case "N":
		return coords.Knight, nil
	default:
		return 0, errf(ErrPiece, "pgn: unknown piece letter %q", raw)
	}
}

// fenPieceLetter decodes a single FEN board-row character into a piece
// kind and color; letter case carries color exactly as in standard FEN.
func fenPieceLetter(c byte) (coords.PieceKind, bool, error) {
	white := c >= 'A' && c <= 'Z'
	var lower byte
	if white {
		lower = c + ('a' - 'A')
	} else {
		lower = c
	}
	var kind coords.PieceKind
	switch lower {
	case 'p':
		kind = coords.Pawn
	case 'r':
		kind = coords.Rook
	case 'b':
		kind = coords.Bishop
	case 'u':
		kind = coords.Unicorn
	case 'd':
		kind = coords.Dragon
	case 'q':
		kind = coords.Queen
	case 's':
		kind = coords.Princess
	case 'k':
		kind = coords.King
	case 'c':
		kind = coords.CommonKing
	case 'n':
		kind = coords.Knight
	case 'w':
		kind = coords.Brawn
	case 'y':
		kind = coords.RoyalQueen
	default:
		return 0, false, errf(ErrFENToken, "pgn: unexpected FEN piece letter %q", string(c))
	}
	return kind, white, nil
}

// parseFEN builds a single board from one bracketed `[board:L:turn:color]`
// entry. A piece letter immediately followed by '*' is placed with
// Moved=false (the notation's marker for "hasn't moved yet"); every
// other piece is placed with Moved=true, since a FEN row is always a
// mid-game snapshot rather than a starting position.
func parseFEN(entry fenEntry, evenTimelines bool, w, h int) (*board.Board, error) {
	l, err := deStrLayer(entry.l, evenTimelines)
	if err != nil {
		return nil, err
	}
	turnNum, err := strconv.Atoi(entry.turn)
	if err != nil {
		return nil, errf(ErrCoordinate, "pgn: invalid turn number %q", entry.turn)
	}
	t := coords.Time((turnNum-1)*2 + boolToInt(entry.color != "w"))

	b := board.New(l, t, w, h)
	rows := strings.Split(entry.board, "/")
	if len(rows) != h {
		return nil, errf(ErrFENDimension, "pgn: FEN %q has %d rows, want %d", entry.board, len(rows), h)
	}

	for rowIdx, row := range rows {
		y := coords.Physical(h - 1 - rowIdx)
		x := 0
		skip := ""
		for i := 0; i < len(row); i++ {
			c := row[i]
			if c >= '0' && c <= '9' {
				skip += string(c)
				continue
			}
			if skip != "" {
				n, _ := strconv.Atoi(skip)
				x += n
				skip = ""
			}
			if c == '*' {
				if x == 0 {
					return nil, errf(ErrFENToken, "pgn: '*' with no preceding piece in %q", row)
				}
				prevX := coords.Physical(x - 1)
				p, ok := b.Get(prevX, y).Piece()
				if !ok {
					return nil, errf(ErrFENToken, "pgn: '*' after non-piece square in %q", row)
				}
				b.Set(prevX, y, coords.PieceTile(coords.NewPiece(p.Kind, p.White, false)))
				continue
			}
			kind, white, err := fenPieceLetter(c)
			if err != nil {
				return nil, err
			}
			if x >= w {
				return nil, errf(ErrFENDimension, "pgn: row %q overruns width %d", row, w)
			}
			b.Set(coords.Physical(x), y, coords.PieceTile(coords.NewPiece(kind, white, true)))
			x++
		}
		if skip != "" {
			n, _ := strconv.Atoi(skip)
			x += n
		}
		if x != w {
			return nil, errf(ErrFENDimension, "pgn: row %q has width %d, want %d", row, x, w)
		}
	}
	return b, nil
}

// Parse decodes a 5D PGN replay into the resulting Game, applying every
// move token in sequence. Only the "custom board" FEN-driven start is
// supported (spec.md's Non-goal on variant catalogs covers loading a
// named ruleset's own starting position from a variants directory).
func Parse(raw []byte) (*game.Game, error) {
	text := stripBraceComments(string(raw))
	headers, fens, err := parseHeaders(text)
	if err != nil {
		return nil, err
	}
	w, h := dimensions(headers)

	evenTimelines := false
	for _, f := range fens {
		if f.l == "+0" || f.l == "-0" {
			evenTimelines = true
		}
	}

	g := game.New(w, h, evenTimelines, true)
	for _, f := range fens {
		b, err := parseFEN(f, evenTimelines, w, h)
		if err != nil {
			return nil, err
		}
		if err := g.InsertBoard(b); err != nil {
			return nil, errf(ErrFENToken, "pgn: %v", err)
		}
	}

	pg := game.NoPartialGame(g)

	headerlessText := stripBracketedHeaders(text)
	active := true
	var pending moveset.Moveset

	flush := func() error {
		if len(pending) == 0 {
			return nil
		}
		next, err := moveset.GenerateSuccessor(pg, pending)
		if err != nil {
			return err
		}
		pg = next
		pending = nil
		return nil
	}

	for _, tok := range reWhitespace.Split(headerlessText, -1) {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if tok == "/" {
			if err := flush(); err != nil {
				return nil, err
			}
			active = false
			continue
		}
		if reTurn.MatchString(tok) {
			if err := flush(); err != nil {
				return nil, err
			}
			active = true
			continue
		}
		if rePresentAnno.MatchString(tok) || reTimelineAnno.MatchString(tok) {
			continue
		}
		mv, err := parseMoveToken(pg, tok, active, evenTimelines)
		if err != nil {
			return nil, err
		}
		pending = append(pending, mv)
	}
	if err := flush(); err != nil {
		return nil, err
	}

	return pg.Flatten(), nil
}

func stripBracketedHeaders(raw string) string {
	var sb strings.Builder
	inHeader := false
	for _, c := range raw {
		switch c {
		case '[':
			inHeader = true
		case ']':
			inHeader = false
			continue
		}
		if !inHeader {
			sb.WriteRune(c)
		}
	}
	return sb.String()
}

// parseMoveToken parses one whitespace-delimited move token into a
// moveset.Move, consuming an optional leading `(Lℓ Tt)` superphysical
// source prefix and then one of: a named-piece jump to another board, a
// named-piece spatial move, a pawn-capture shorthand, or a bare pawn
// destination.
func parseMoveToken(pg *game.PartialGame, token string, active, evenTimelines bool) (moveset.Move, error) {
	base := token
	fromL := coords.L(0)
	ti, _ := pg.Info().TimelineInfo(0)
	fromT := ti.LastBoard

	work := token
	if m := reSuperphysical.FindStringSubmatchIndex(work); m != nil {
		groups := reSuperphysical.FindStringSubmatch(work)
		l, err := deStrLayer(groups[1], evenTimelines)
		if err != nil {
			return moveset.Move{}, err
		}
		t, err := deTime(groups[2], active)
		if err != nil {
			return moveset.Move{}, err
		}
		fromL, fromT = l, t
		work = work[m[1]:]
	}

	if loc := rePiece.FindStringIndex(work); loc != nil {
		letter := work[loc[0]:loc[1]]
		kind, err := dePgnPiece(letter)
		if err != nil {
			return moveset.Move{}, err
		}
		work = work[loc[1]:]
		return parseNamedPieceMove(pg, base, work, fromL, fromT, active, evenTimelines, kind)
	}
	if groups := rePawnCapture.FindStringSubmatch(work); groups != nil {
		fx, err := deX(groups[1][0])
		if err != nil {
			return moveset.Move{}, err
		}
		tx, err := deX(groups[2][0])
		if err != nil {
			return moveset.Move{}, err
		}
		ty, err := deY(groups[3])
		if err != nil {
			return moveset.Move{}, err
		}
		var fy coords.Physical
		if active {
			fy = ty - 1
		} else {
			fy = ty + 1
		}
		from := coords.New(fromL, fromT, fx, fy)
		to := coords.New(fromL, fromT, tx, ty)
		return buildMove(pg, from, to, promotionSuffix(work[len(groups[0]):])), nil
	}
	if groups := reCoords.FindStringSubmatch(work); groups != nil {
		tx, err := deX(groups[1][0])
		if err != nil {
			return moveset.Move{}, err
		}
		ty, err := deY(groups[2])
		if err != nil {
			return moveset.Move{}, err
		}
		fy, err := resolvePawnSource(pg, fromL, fromT, active, tx, ty)
		if err != nil {
			return moveset.Move{}, err
		}
		from := coords.New(fromL, fromT, tx, fy)
		to := coords.New(fromL, fromT, tx, ty)
		rest := work[len(groups[0]):]
		return buildMove(pg, from, to, promotionSuffix(rest)), nil
	}
	return moveset.Move{}, errf(ErrSyntax, "pgn: syntax error at %q in %q", work, base)
}

func promotionSuffix(rest string) *coords.PieceKind {
	groups := rePromotion.FindStringSubmatch(rest)
	if groups == nil || groups[1] == "" {
		return nil
	}
	kind, err := dePgnPiece(groups[1])
	if err != nil {
		return nil
	}
	return &kind
}

func buildMove(pg *game.PartialGame, from, to coords.Coords, promote *coords.PieceKind) moveset.Move {
	mover, _ := pg.Get(from).Piece()
	return moveset.Move{From: from, To: to, Kind: moveKind(pg, from, to, mover), PromoteInto: promote}
}

func moveKind(pg *game.PartialGame, from, to coords.Coords, mover coords.Piece) movegen.MoveKind {
	if pg.Get(to).IsPiece() {
		return movegen.Capture
	}
	if mover.Kind.IsPawnlike() {
		if ep, ok := pg.BoardEnPassant(from.L, from.T); ok && ep == to && to.X != from.X {
			return movegen.EnPassant
		}
	}
	return movegen.Quiet
}

// parseNamedPieceMove handles a token after its leading piece letter has
// already been consumed: either a jump (`d4>(L1 T6)d5`) to a different
// board, or an ordinary same-board move (`Rd4`, `Nc3`, `Rxd4`).
func parseNamedPieceMove(pg *game.PartialGame, base, work string, fromL coords.L, fromT coords.Time, active, evenTimelines bool, kind coords.PieceKind) (moveset.Move, error) {
	if groups := reJump.FindStringSubmatch(work); groups != nil {
		fx, err := deX(groups[1][0])
		if err != nil {
			return moveset.Move{}, err
		}
		fy, err := deY(groups[2])
		if err != nil {
			return moveset.Move{}, err
		}
		rest := work[len(groups[0]):]
		supGroups := reSuperphysical.FindStringSubmatch(rest)
		if supGroups == nil {
			return moveset.Move{}, errf(ErrSyntax, "pgn: jump missing destination board in %q", base)
		}
		toL, err := deStrLayer(supGroups[1], evenTimelines)
		if err != nil {
			return moveset.Move{}, err
		}
		toT, err := deTime(supGroups[2], active)
		if err != nil {
			return moveset.Move{}, err
		}
		rest = rest[len(supGroups[0]):]
		coordGroups := reCoords.FindStringSubmatch(rest)
		if coordGroups == nil {
			return moveset.Move{}, errf(ErrSyntax, "pgn: jump missing destination square in %q", base)
		}
		tx, err := deX(coordGroups[1][0])
		if err != nil {
			return moveset.Move{}, err
		}
		ty, err := deY(coordGroups[2])
		if err != nil {
			return moveset.Move{}, err
		}
		from := coords.New(fromL, fromT, fx, fy)
		to := coords.New(toL, toT, tx, ty)
		rest = rest[len(coordGroups[0]):]
		return buildMove(pg, from, to, promotionSuffix(rest)), nil
	}

	groups := reNonjump.FindStringSubmatch(work)
	if groups == nil {
		return moveset.Move{}, errf(ErrSyntax, "pgn: syntax error at %q in %q", work, base)
	}
	tx, err := deX(groups[3][0])
	if err != nil {
		return moveset.Move{}, err
	}
	ty, err := deY(groups[4])
	if err != nil {
		return moveset.Move{}, err
	}
	var knownX, knownY *coords.Physical
	if groups[1] != "" {
		x, err := deX(groups[1][0])
		if err != nil {
			return moveset.Move{}, err
		}
		knownX = &x
	}
	if groups[2] != "" {
		y, err := deY(groups[2])
		if err != nil {
			return moveset.Move{}, err
		}
		knownY = &y
	}
	to := coords.New(fromL, fromT, tx, ty)
	fromCoords, err := resolveSource(pg, fromL, fromT, kind, active, knownX, knownY, to)
	if err != nil {
		return moveset.Move{}, err
	}
	rest := work[len(groups[0]):]
	return buildMove(pg, fromCoords, to, promotionSuffix(rest)), nil
}

// resolveSource finds the one piece of the given kind/color on (l, t)
// matching the known axes, disambiguating by move generation if more
// than one candidate shares the known axes.
func resolveSource(pg *game.PartialGame, l coords.L, t coords.Time, kind coords.PieceKind, white bool, knownX, knownY *coords.Physical, to coords.Coords) (coords.Coords, error) {
	b, ok := pg.Board(l, t)
	if !ok {
		return coords.Coords{}, errf(ErrNoBoard, "pgn: no board at L=%d T=%d", l, t)
	}
	var candidates []coords.Coords
	for _, pp := range b.Pieces() {
		if pp.Piece.Kind != kind || pp.Piece.White != white {
			continue
		}
		if knownX != nil && pp.Coords.X != *knownX {
			continue
		}
		if knownY != nil && pp.Coords.Y != *knownY {
			continue
		}
		candidates = append(candidates, pp.Coords)
	}
	if len(candidates) == 1 {
		return candidates[0], nil
	}
	if len(candidates) == 0 {
		return coords.Coords{}, errf(ErrAmbiguous, "pgn: no %s can reach %v", kind, to)
	}
	var filtered []coords.Coords
	for _, c := range candidates {
		pp := movegen.PiecePosition{Piece: coords.NewPiece(kind, white, true), Coords: c}
		for _, mv := range movegen.GenerateMoves(pg, pp) {
			if mv.To == to {
				filtered = append(filtered, c)
				break
			}
		}
	}
	if len(filtered) == 1 {
		return filtered[0], nil
	}
	return coords.Coords{}, errf(ErrAmbiguous, "pgn: ambiguous %s move to %v among %v", kind, to, candidates)
}

// resolvePawnSource infers a bare pawn destination's source square: one
// rank behind if an own pawn sits there, or two ranks behind if an
// unmoved kickstart-capable piece sits there (a genuine opening double
// step), matching the source's own heuristic.
func resolvePawnSource(pg *game.PartialGame, l coords.L, t coords.Time, white bool, toX, toY coords.Physical) (coords.Physical, error) {
	var behind1, behind2 coords.Physical
	if white {
		behind1, behind2 = toY-1, toY-2
	} else {
		behind1, behind2 = toY+1, toY+2
	}
	if p, ok := pg.Get(coords.New(l, t, toX, behind1)).Piece(); ok && p.Kind == coords.Pawn && p.White == white {
		return behind1, nil
	}
	if p, ok := pg.Get(coords.New(l, t, toX, behind2)).Piece(); ok && p.Kind.IsPawnlike() && p.Kind.CanKickstart() && !p.Moved && p.White == white {
		return behind2, nil
	}
	return 0, errf(ErrAmbiguous, "pgn: no pawn can reach (%d,%d)", toX, toY)
}
