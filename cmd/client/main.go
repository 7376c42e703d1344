// Command client is a terminal debug client for the Trivia Conquest server.
// It joins the lobby, prints every broadcast, and accepts commands on stdin:
//
//	start
//	attack <territory-id>
//	answer <territory-id> <choice> <response-ms>
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"trivia-conquest/internal/protocol"

	"github.com/coder/websocket"
)

func main() {
	addr := flag.String("addr", "ws://localhost:3000/ws", "Server websocket address")
	name := flag.String("name", "Observer", "Display name")
	flag.Parse()

	ctx := context.Background()

	conn, _, err := websocket.Dial(ctx, *addr, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dial %s: %v\n", *addr, err)
		os.Exit(1)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")
	conn.SetReadLimit(1 << 20)

	send := func(msgType protocol.MessageType, payload interface{}) {
		msg, err := protocol.NewMessage(msgType, payload)
		if err != nil {
			fmt.Fprintf(os.Stderr, "encode: %v\n", err)
			return
		}
		data, _ := json.Marshal(msg)
		if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
			fmt.Fprintf(os.Stderr, "write: %v\n", err)
		}
	}

	send(protocol.TypeJoin, protocol.JoinPayload{Name: *name})

	go func() {
		for {
			_, data, err := conn.Read(ctx)
			if err != nil {
				fmt.Fprintf(os.Stderr, "connection closed: %v\n", err)
				os.Exit(0)
			}
			var msg protocol.Message
			if err := json.Unmarshal(data, &msg); err != nil {
				continue
			}
			printMessage(&msg)
		}
	}()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "start":
			send(protocol.TypeStartGame, struct{}{})
		case "attack":
			if len(fields) != 2 {
				fmt.Println("usage: attack <territory-id>")
				continue
			}
			send(protocol.TypeAttack, protocol.AttackPayload{TerritoryID: fields[1]})
		case "answer":
			if len(fields) != 4 {
				fmt.Println("usage: answer <territory-id> <choice> <response-ms>")
				continue
			}
			choice, err1 := strconv.Atoi(fields[2])
			ms, err2 := strconv.ParseInt(fields[3], 10, 64)
			if err1 != nil || err2 != nil {
				fmt.Println("usage: answer <territory-id> <choice> <response-ms>")
				continue
			}
			send(protocol.TypeAnswer, protocol.AnswerPayload{TerritoryID: fields[1], Answer: choice, ResponseTimeMs: ms})
		case "quit":
			return
		default:
			fmt.Println("commands: start, attack, answer, quit")
		}
	}
}

// printMessage renders the interesting messages readably and dumps the rest.
func printMessage(msg *protocol.Message) {
	switch msg.Type {
	case protocol.TypeWelcome:
		var p protocol.WelcomePayload
		msg.ParsePayload(&p)
		fmt.Printf("<< welcome (server %s), you are %s\n", p.ServerVersion, p.PlayerID)
	case protocol.TypeQuestionChallenge:
		var p protocol.QuestionChallengePayload
		msg.ParsePayload(&p)
		fmt.Printf("<< DUEL (%s) for %s: %s\n", p.Role, p.TerritoryID, p.Question.Question)
		for i, a := range p.Question.Answers {
			fmt.Printf("     [%d] %s\n", i, a)
		}
	case protocol.TypeDuelResult:
		var p protocol.DuelResultPayload
		msg.ParsePayload(&p)
		fmt.Printf("<< duel result for %s: %s wins (%s)\n", p.TerritoryID, p.Winner, p.Reason)
	case protocol.TypeTurnUpdate:
		var p protocol.TurnUpdatePayload
		msg.ParsePayload(&p)
		fmt.Printf("<< turn: %s\n", p.PlayerID)
	case protocol.TypeGameLog:
		var p protocol.GameLogPayload
		msg.ParsePayload(&p)
		fmt.Printf("<< log: %s\n", p.Text)
	case protocol.TypeError:
		var p protocol.ErrorPayload
		msg.ParsePayload(&p)
		fmt.Printf("<< error [%s]: %s\n", p.Code, p.Message)
	case protocol.TypeGameOver:
		var p protocol.GameOverPayload
		msg.ParsePayload(&p)
		fmt.Printf("<< GAME OVER: %s (%s)\n", p.Winner.Name, p.Reason)
	default:
		fmt.Printf("<< %s: %s\n", msg.Type, string(msg.Payload))
	}
}
