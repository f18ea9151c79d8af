// Package fuzztests houses Go fuzz harnesses that exercise the formatting
// pipeline (source -> lexer -> parser -> splitter). Its goal is to smoke test
// robustness and guard against panics, hangs and broken token chains on
// arbitrary inputs.
//
// Назначение: запускать fuzz-обработчики, которые загружают байты в FileSet и
// прогоняют их через лексер, парсер и разбиение объявлений.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
