package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Session level messages (info)
		"Installing %d mock rules":      "%d 件のモックルールをインストール中",
		"Mock rules installed":          "モックルールをインストールしました",
		"Navigating to %s":              "%s へ移動中",
		"Session closed":                "セッションを終了しました",
		"Interrupted, shutting down...": "中断されました。シャットダウン中...",

		// Browser component
		"Launching browser":                  "ブラウザを起動中",
		"Launching browser in headless mode": "ヘッドレスモードでブラウザを起動中",
		"Launching browser in visible mode":  "表示モードでブラウザを起動中",
		"Browser closed":                     "ブラウザを閉じました",

		// Registry component (debug)
		"Registered rule %s for %s": "ルール %s を %s に登録しました",
		"Replacing rule %s":         "ルール %s を置き換えます",
		"Removed rule %s":           "ルール %s を削除しました",

		// Dispatch component (debug)
		"Rule %s fulfilled %s %s (count %d)":      "ルール %s が %s %s に応答しました (回数 %d)",
		"Rule %s exhausted its call budget of %d": "ルール %s は応答回数上限 %d に達しました",

		// Warnings
		"Pass-through failed: %s":                      "パススルーに失敗しました: %s",
		"Browser rejected fulfillment for rule %s: %s": "ブラウザがルール %s の応答を拒否しました: %s",
		"Recovered panic in rule predicate: %v":        "ルール述語のパニックから復帰しました: %v",
		"Failed to record traffic event: %s":           "トラフィックイベントの記録に失敗しました: %s",

		// Errors
		"Failed to launch browser: %s":        "ブラウザの起動に失敗しました: %s",
		"Failed to navigate: %s":              "ページ移動に失敗しました: %s",
		"Falling back to pass-through: %s":    "パススルーにフォールバックします: %s",
		"Recovered panic during dispatch: %v": "ディスパッチ中のパニックから復帰しました: %v",
	})
}
