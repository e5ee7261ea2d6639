// Package content implements the on-chain feed: reading posts from the
// contract, publishing new ones, and pinning media to the content-addressed
// store that the contract references by CID.
package content

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// contractABI describes the feed contract surface the client uses. Posts are
// stored on chain as tuples and returned newest-last; media lives off chain
// and is referenced by CID only.
const contractABI = `[
  {
    "type": "function",
    "name": "getAllTweets",
    "stateMutability": "view",
    "inputs": [],
    "outputs": [
      {
        "name": "",
        "type": "tuple[]",
        "components": [
          {"name": "id", "type": "uint256"},
          {"name": "author", "type": "address"},
          {"name": "name", "type": "string"},
          {"name": "userId", "type": "string"},
          {"name": "avatar", "type": "string"},
          {"name": "content", "type": "string"},
          {"name": "mediaCID", "type": "string"},
          {"name": "timestamp", "type": "uint256"}
        ]
      }
    ]
  },
  {
    "type": "function",
    "name": "getTweetsByUser",
    "stateMutability": "view",
    "inputs": [{"name": "author", "type": "address"}],
    "outputs": [
      {
        "name": "",
        "type": "tuple[]",
        "components": [
          {"name": "id", "type": "uint256"},
          {"name": "author", "type": "address"},
          {"name": "name", "type": "string"},
          {"name": "userId", "type": "string"},
          {"name": "avatar", "type": "string"},
          {"name": "content", "type": "string"},
          {"name": "mediaCID", "type": "string"},
          {"name": "timestamp", "type": "uint256"}
        ]
      }
    ]
  },
  {
    "type": "function",
    "name": "postTweet",
    "stateMutability": "nonpayable",
    "inputs": [
      {"name": "name", "type": "string"},
      {"name": "userId", "type": "string"},
      {"name": "avatar", "type": "string"},
      {"name": "content", "type": "string"},
      {"name": "mediaCID", "type": "string"}
    ],
    "outputs": []
  },
  {
    "type": "function",
    "name": "addComment",
    "stateMutability": "nonpayable",
    "inputs": [
      {"name": "tweetId", "type": "uint256"},
      {"name": "name", "type": "string"},
      {"name": "userId", "type": "string"},
      {"name": "avatar", "type": "string"},
      {"name": "comment", "type": "string"},
      {"name": "mediaCID", "type": "string"}
    ],
    "outputs": []
  },
  {
    "type": "function",
    "name": "postMutableTweet",
    "stateMutability": "nonpayable",
    "inputs": [
      {"name": "name", "type": "string"},
      {"name": "userId", "type": "string"},
      {"name": "avatar", "type": "string"},
      {"name": "content", "type": "string"},
      {"name": "mediaCID", "type": "string"}
    ],
    "outputs": []
  }
]`

// ContractABI parses the feed contract ABI. The definition is a compile-time
// constant, so a parse failure is a programming error and panics.
func ContractABI() abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(contractABI))
	if err != nil {
		panic("content: invalid contract ABI: " + err.Error())
	}
	return parsed
}
