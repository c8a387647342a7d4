// Package analyzer scores how likely an article is to be misleading.
//
// # Scorers
//
// Three scorers are provided, from least to most evidence:
//   - URLAnalyzer looks at the URL string alone. It is used when the article
//     could not be retrieved.
//   - ContentAnalyzer.ScoreText scores a title and the article's plain text.
//   - ContentAnalyzer.ScoreStructured scores headings, paragraphs, links and
//     images, then blends in the plain-text score of the main text.
//
// Every scorer starts from a neutral score of 0 and adds or subtracts
// weights as rules fire. The bullshit rating is the score shifted by 50 and
// clamped to 0-100.
//
// # Blacklist short-circuit
//
// All scorers consult the publisher blacklist first. A blacklisted publisher
// ends the analysis with a fixed bullshit verdict, a rating of 100 and two
// blacklist reasons. No other rule contributes.
//
// # Rules and ladders
//
// Independent rules live in ordered tables; every matching rule fires and
// reasons keep table order. Mutually exclusive thresholds (text length,
// capitalization, paragraph depth, ...) are Ladders: ordered bands evaluated
// top-down where only the first matching band fires. Reordering a table or a
// ladder changes the output, so the order is part of the contract and is
// covered by tests.
package analyzer
