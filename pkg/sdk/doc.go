// Package sportsqa embeds the sports question answering pipeline in a Go
// program without running the HTTP server.
//
// The knowledge base is read once in New; every Ask call is independent and
// safe for concurrent use.
//
//	client, _ := sportsqa.New(ctx, sportsqa.WithKnowledgeDir("data"))
//	ans := client.Ask(ctx, "레이저 강풍 세팅 알려줘")
//	fmt.Println(ans.Text)
//
// # Generation
//
// An optional Generator rewrites the local answer. Failures never surface as
// errors; the local answer is returned with Answer.GenerationError set.
//
//	client, _ := sportsqa.New(ctx,
//	    sportsqa.WithKnowledgeDir("data"),
//	    sportsqa.WithGenerator("openai", apiKey, myGenerator),
//	)
//	ans := client.Ask(ctx, "투수의 역할은?", sportsqa.Generate(true))
package sportsqa
