package logs

const createMatchTable = `
CREATE TABLE IF NOT EXISTS matches (
  id varchar primary key,
  day string not null,
  time datetime,
  black varchar,
  white varchar,
  winner string,
  black_score int,
  white_score int,
  disqualified boolean,
  elapsed_ms int,
  latency_ms int,
  plies int,
  moves string
)`

const createPlayerView = `
CREATE VIEW IF NOT EXISTS player_matches (
  id, day, player, opponent, color, result, score, opponent_score, disqualified, plies
) AS
SELECT id, day, black, white, 'black',
       CASE winner WHEN 'black' THEN 'win' WHEN 'white' THEN 'lose' ELSE 'draw' END,
       black_score, white_score, disqualified, plies
 FROM matches
UNION ALL
SELECT id, day, white, black, 'white',
       CASE winner WHEN 'white' THEN 'win' WHEN 'black' THEN 'lose' ELSE 'draw' END,
       white_score, black_score, disqualified, plies
 FROM matches
`

const insertStmt = `
INSERT INTO matches (
  id, day, time, black, white, winner, black_score, white_score,
  disqualified, elapsed_ms, latency_ms, plies, moves
) VALUES (
  :id, :day, :time, :black, :white, :winner, :black_score, :white_score,
  :disqualified, :elapsed_ms, :latency_ms, :plies, :moves
)`

const selectPlayerStmt = `
SELECT id, day, player, opponent, color, result, score, opponent_score, disqualified, plies
FROM player_matches
WHERE player = ?
ORDER BY day, id
`

const selectMatchStmt = `
SELECT * FROM matches WHERE id = ?
`
