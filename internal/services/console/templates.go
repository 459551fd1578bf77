package console

// Tailwind classes shared by several components in console.templ.
const (
	iconButtonClass = "w-8 h-8 border-none rounded bg-transparent hover:bg-slate-500/10 focus:bg-slate-500/10 active:bg-slate-500/25 transition-all ease-in-out duration-300 flex items-center justify-center"
	labelClass      = "px-2 mb-2 block text-xs font-medium text-gray-600 dark:text-gray-300"
	inputClass      = "block w-full p-2 text-xs text-gray-900 border border-gray-300 rounded bg-gray-50 focus:ring-blue-500 focus:border-blue-500 dark:bg-gray-700 dark:border-gray-600 dark:text-white placeholder:text-gray-400 dark:placeholder:text-gray-500 font-mono"
)
